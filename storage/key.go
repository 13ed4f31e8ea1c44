package storage

import "github.com/google/uuid"

// ComputeKey derives a deterministic UUID v5 from a record kind and a business
// key, using the OID namespace.
func ComputeKey(kind, businessKey string) uuid.UUID {
	seed := "storefront" + kind + businessKey
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// CartKey returns the record key for the cart of deviceID.
func CartKey(deviceID string) string {
	return ComputeKey("cart", deviceID).String()
}
