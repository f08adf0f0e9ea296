package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// TotalCatalogItems is the denominator of the overall progress percentage:
// ten modules plus three scenarios.
const TotalCatalogItems = 13

const (
	MimeImage = "image/"
)

const MaxIconSize = 2 << 20

const RequestIDKey = "request_id"
