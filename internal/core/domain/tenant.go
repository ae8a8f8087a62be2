package domain

// TenantSettings carries the per-tenant ledger configuration.
type TenantSettings struct {
	TenantID         string `json:"tenantID"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	StrictFxRates    bool   `json:"strictFxRates"` // reject conversions with no known rate
	AuditFields
}
