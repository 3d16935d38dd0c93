package ports

// KeyEncoder turns a hex x-only public key into its checksummed text form.
type KeyEncoder interface {
	Encode(publicKeyHex string) (string, error)
}
