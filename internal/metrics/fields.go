package metrics

// Attribute keys shared by the OTel instruments.
const (
	AttrMethod   = "http_method"
	AttrPath     = "http_path"
	AttrStatus   = "http_status"
	AttrEndpoint = "endpoint"
	AttrStore    = "store"
	AttrAction   = "action"
	AttrOutcome  = "outcome"
)
