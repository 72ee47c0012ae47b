package identity

// ResourceKind identifies a countable, plan-limited resource
type ResourceKind string

const (
	ResourceProducts ResourceKind = "products"
	ResourceUsers    ResourceKind = "users"
)

// IsValid reports whether the kind is one of the known countable resources
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceProducts, ResourceUsers:
		return true
	default:
		return false
	}
}

// LogicalName returns the logical partition name for the resource kind
func (k ResourceKind) LogicalName() string {
	return string(k)
}
