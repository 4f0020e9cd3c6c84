// Package auth provides credential and session primitives for CRM Core.
//
// It implements:
//   - bcrypt password hashing and verification (one-way, salted; candidates
//     are re-hashed and compared, never decrypted)
//   - HS256 JWT access tokens carrying user id, username and role name
//   - random refresh-session tokens stored server-side as SHA-256 hashes
//
// The package makes no policy decisions: role names travel in the token,
// but authorization enforcement belongs to the caller.
package auth
