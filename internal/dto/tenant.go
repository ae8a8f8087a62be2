package dto

// UpdateTenantSettingsRequest changes the ledger configuration of a tenant.
type UpdateTenantSettingsRequest struct {
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,len=3"`
	StrictFxRates    bool   `json:"strictFxRates"`
}
