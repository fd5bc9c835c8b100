// Package auth authenticates users by email and password and authorizes
// requests with stateless, signed session tokens.
//
// Credential verification:
//   - UserProvider resolves an account by email through a Users store,
//     verifies the password against the stored bcrypt hash, and returns a
//     sanitized Identity. The same routine backs the direct sign-in flow and
//     the pluggable LoginStrategy, so the two entry points cannot drift.
//
// Sessions:
//   - TokenService signs the sanitized identity into an HS256 JWT keyed by a
//     process-wide secret. Sessions are stateless: validity is determined by
//     the signature and claims alone, there is no server-side session store
//     and no revocation short of rotating the secret.
//
// Guards:
//   - Guard is parameterized over a RequestVerifier. The token-based verifier
//     protects arbitrary endpoints by extracting and validating a Bearer
//     token; the strategy-based verifier protects the login endpoint itself
//     by running the LoginStrategy against the request body. Either way the
//     guard attaches the resulting identity to the request context or rejects
//     the request, never both.
package auth
