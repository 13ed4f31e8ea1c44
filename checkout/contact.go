package checkout

import "strings"

// Contact is what the shopper types on the checkout form.
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Location string `json:"location,omitempty"`
	MapLink  string `json:"mapLink,omitempty"`
}

// Missing lists the required fields that are blank.
func (c Contact) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(c.Address) == "" {
		missing = append(missing, "address")
	}
	return missing
}

// Validate returns an *IncompleteContactError when a required field is blank.
func (c Contact) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return &IncompleteContactError{Missing: missing}
	}
	return nil
}

func (c Contact) trimmed() Contact {
	return Contact{
		Name:     strings.TrimSpace(c.Name),
		Phone:    strings.TrimSpace(c.Phone),
		Address:  strings.TrimSpace(c.Address),
		Location: strings.TrimSpace(c.Location),
		MapLink:  strings.TrimSpace(c.MapLink),
	}
}
