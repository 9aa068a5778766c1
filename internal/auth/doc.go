// Package auth provides authentication for the flashlearn server.
//
// It covers password hashing (bcrypt), the account service
// (register/login/change-password), server-side sessions (scs over
// sqlite), CSRF protection, and the Gin middleware that resolves the
// authenticated principal into the request context.
//
// Login accepts either the account email or the display name as the
// identifier; when both could match different accounts, the email match
// is tried first.
package auth
