// Package envelope seals and opens self-describing encrypted envelopes used
// for session tokens and login payloads.
//
// An envelope carries everything needed to open it except the key: a version
// byte, the time it was sealed, the random IV or nonce and an authentication
// tag. Two implementations of the Cipher interface are provided:
//
//   - Fernet, the default, interoperable with the hosted service and its other
//     client libraries. It is built on github.com/fernet/fernet-go
//     (AES-128-CBC with HMAC-SHA256).
//   - GCM, for deployments where only this process holds the key. The AES-256
//     key is derived with HKDF-SHA-256 from a master key and a project key and
//     the envelope header is bound as additional authenticated data.
//
// Both support key rotation: the first key seals, every key is tried when
// opening.
//
// # Usage
//
//	key, _ := envelope.GenerateFernetKey()
//	c, err := envelope.NewFernet(key)
//	if err != nil {
//	    // handle error
//	}
//
//	sealed, _ := c.Seal([]byte(`{"sub":"u123"}`))
//	plain, sealedAt, err := c.Open(sealed)
//
// # Error Handling
//
// Open distinguishes structurally broken input (ErrMalformed) from input that
// parses but fails verification under every configured key (ErrAuthentication).
// Callers branch on these with errors.Is. Expiry policy is not applied here;
// Open only reports when the envelope was sealed.
package envelope
