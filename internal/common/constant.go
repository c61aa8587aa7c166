// Package common contains constants, sentinel errors and small helpers shared
// by the NewsDigest client and server.
package common

// SessionCookieName is the cookie carrying the signed server session. The
// client never inspects it; it only keeps it in its cookie jar.
const SessionCookieName = "session"

// ShareIDBytes is the number of random bytes behind a share identifier
// (rendered as twice as many hex characters).
const ShareIDBytes = 6
