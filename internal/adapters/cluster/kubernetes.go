package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	"crdfix/internal/ports"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Kubernetes answers cluster questions through the discovery API of the
// cluster selected by the default kubeconfig.
type Kubernetes struct {
	clientSet *kubernetes.Clientset
}

func ProvideKubernetes() (*Kubernetes, error) {
	// Try to load the kubeConfig from the default location
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %v", err)
	}
	kubeConfigPath := filepath.Join(home, ".kube", "config")

	kubeConfig, err := clientcmd.BuildConfigFromFlags("", kubeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %v", err)
	}

	clientSet, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %v", err)
	}

	return &Kubernetes{clientSet: clientSet}, nil
}

func (k *Kubernetes) ResourceServed(groupVersion, resource string) (bool, error) {
	resourceList, err := k.clientSet.Discovery().ServerResourcesForGroupVersion(groupVersion)
	if err != nil {
		if k8serrors.IsNotFound(err) {
			// Group/version not registered at all
			return false, nil
		}
		return false, fmt.Errorf("failed to query discovery API: %v", err)
	}

	for _, apiResource := range resourceList.APIResources {
		if apiResource.Name == resource {
			return true, nil
		}
	}
	return false, nil
}

var _ ports.ClusterInspector = (*Kubernetes)(nil)
