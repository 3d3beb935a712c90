package response

// ProbeResponse carries the value read back by the database round trip.
type ProbeResponse struct {
	Test int `json:"test"`
}
