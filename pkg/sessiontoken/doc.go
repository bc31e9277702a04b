// Package sessiontoken holds the short-lived token that proves a targeted
// content session is still valid.
//
// A Cache keeps at most one token together with its expiry instant. Read
// checks the expiry on every call and reports the token as absent once it has
// passed, exactly as if it had never been stored; nothing needs to sweep
// expired entries. Tokens issued without a lifetime go through
// StoreWithoutExpiry and stay valid until cleared or replaced.
//
//	tokens := sessiontoken.New()
//	tokens.Store("tok-1", 15*time.Minute)
//
//	if tok, ok := tokens.Read(); ok {
//	    // refresh the session with tok
//	}
//
// Each provider owns its own Cache, so two providers in one process never see
// each other's tokens.
package sessiontoken
