package credential

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Default returns the ambient Azure credential chain (environment variables,
// workload identity, managed identity, Azure CLI).
func Default() (TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("build default azure credential: %w", err)
	}
	return cred, nil
}

// AzureCLI returns a credential backed by the logged-in Azure CLI session.
func AzureCLI() (TokenCredential, error) {
	cred, err := azidentity.NewAzureCLICredential(nil)
	if err != nil {
		return nil, fmt.Errorf("build azure cli credential: %w", err)
	}
	return cred, nil
}
