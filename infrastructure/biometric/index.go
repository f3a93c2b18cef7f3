package biometric

import (
	"os"

	"faceclock.io/infrastructure/biometric/types"
	"faceclock.io/infrastructure/network"
)

var Extractor types.DescriptorExtractor

func InitialiseBiometricService() {
	Extractor = &RemoteExtractorService{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACE_EMBEDDER_URL"),
		},
	}
}
