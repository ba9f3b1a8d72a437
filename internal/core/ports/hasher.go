package ports

// Hasher computes stable content hashes used as cache keys.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashBytes returns the hex digest of data.
	HashBytes(data []byte) string

	// HashFile returns the hex digest of the file content at path.
	HashFile(path string) (string, error)
}
