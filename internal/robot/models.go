package robot

// Robot is a physical collection unit identified by hardware address. The
// AdminID is a weak reference: deleting the admin leaves the field stale, no
// cascading rule applies.
type Robot struct {
	ID         string `json:"id"`
	MACAddress string `json:"macAddress"`
	// Active is the two-state activation flag. New robots start inactive.
	Active      bool   `json:"status"`
	Region      string `json:"region"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	Model       string `json:"model,omitempty"`
	AdminID     string `json:"adminId,omitempty"`
}

// Spec carries the caller-supplied fields for create and replace. Any id in
// the request body is ignored; the registry assigns identifiers.
type Spec struct {
	MACAddress  string `json:"macAddress"`
	Region      string `json:"region"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Model       string `json:"model"`
	AdminID     string `json:"adminId"`
}
