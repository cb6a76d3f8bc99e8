package ports

// ClusterInspector answers read-only questions about the currently selected
// Kubernetes cluster.
type ClusterInspector interface {
	// ResourceServed reports whether the cluster serves the named resource
	// under the given group/version (e.g. "rbac.kubevirt.io/v1alpha1",
	// "foldertrees").
	ResourceServed(groupVersion, resource string) (bool, error)
}
