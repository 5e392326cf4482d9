package model

// GeneratePool requests pool generation for a period. An empty period means
// the current period in the business time zone.
type GeneratePool struct {
	Period string `json:"period"`
}

// RunDistribution triggers a distribution run against the period's pool.
type RunDistribution struct {
	Period string `json:"period"`
}
