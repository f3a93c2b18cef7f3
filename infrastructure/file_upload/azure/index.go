package azure

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"faceclock.io/infrastructure/logger"
	_azblob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	azblob_sas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	azblob "github.com/Azure/azure-storage-blob-go/azblob"
)

type AzureBlobSignedURLService struct {
	AccountName   string
	ContainerName string
	AccountKey    string
}

func (service *AzureBlobSignedURLService) blobURL(fileName string) (*azblob.BlockBlobURL, error) {
	credential, err := azblob.NewSharedKeyCredential(service.AccountName, service.AccountKey)
	if err != nil {
		logger.Error("error generating azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	parsedURL, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", service.AccountName, service.ContainerName, fileName))
	if err != nil {
		logger.Error("error parsing blob url", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	blobURL := azblob.NewBlockBlobURL(*parsedURL, azblob.NewPipeline(credential, azblob.PipelineOptions{}))
	return &blobURL, nil
}

func (service *AzureBlobSignedURLService) generateSignedURL(fileName string, permissions azblob_sas.BlobPermissions, validFor time.Duration) (*string, error) {
	blobURL, err := service.blobURL(fileName)
	if err != nil {
		return nil, err
	}
	credential, err := _azblob.NewSharedKeyCredential(service.AccountName, service.AccountKey)
	if err != nil {
		logger.Error("error generating _azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	sasQueryParams, err := azblob_sas.BlobSignatureValues{
		Protocol:      azblob_sas.ProtocolHTTPS,
		StartTime:     time.Now().UTC(),
		ExpiryTime:    time.Now().UTC().Add(validFor),
		Permissions:   permissions.String(),
		ContainerName: service.ContainerName,
		BlobName:      fileName,
	}.SignWithSharedKey(credential)
	if err != nil {
		logger.Error("error signing blob signature values", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	sasURL := fmt.Sprintf("%s?%s", blobURL.String(), sasQueryParams.Encode())
	return &sasURL, nil
}

// GenerateUploadURL signs a write-only URL the client pushes the enrollment
// photo to. Valid for 5 minutes.
func (service *AzureBlobSignedURLService) GenerateUploadURL(fileName string) (*string, error) {
	return service.generateSignedURL(fileName, azblob_sas.BlobPermissions{Write: true}, 5*time.Minute)
}

// GenerateDownloadURL signs a read-only URL for displaying a stored photo.
func (service *AzureBlobSignedURLService) GenerateDownloadURL(fileName string) (*string, error) {
	return service.generateSignedURL(fileName, azblob_sas.BlobPermissions{Read: true}, 15*time.Minute)
}

func (service *AzureBlobSignedURLService) CheckFileExists(fileName string) (bool, error) {
	blobURL, err := service.blobURL(fileName)
	if err != nil {
		return false, err
	}
	_, err = blobURL.GetProperties(context.TODO(), azblob.BlobAccessConditions{}, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		if serr, ok := err.(azblob.StorageError); ok {
			if serr.ServiceCode() == azblob.ServiceCodeBlobNotFound {
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}
