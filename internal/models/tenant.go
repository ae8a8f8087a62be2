package models

// TenantSettings is a row of the tenants table.
type TenantSettings struct {
	TenantID         string `db:"tenant_id"`
	BaseCurrencyCode string `db:"base_currency_code"`
	StrictFxRates    bool   `db:"strict_fx_rates"`
	AuditFields
}
