package types

// FileUploaderType hands out short-lived signed URLs so enrollment photos
// move between the client and blob storage without passing through this
// service.
type FileUploaderType interface {
	GenerateUploadURL(fileName string) (*string, error)
	GenerateDownloadURL(fileName string) (*string, error)
	CheckFileExists(fileName string) (bool, error)
}
