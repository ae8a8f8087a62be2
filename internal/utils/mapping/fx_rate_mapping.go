package mapping

import (
	"github.com/SscSPs/backoffice_ledger/internal/core/domain"
	"github.com/SscSPs/backoffice_ledger/internal/models"
)

// ToModelFxRate converts a domain FxRate to a model FxRate
func ToModelFxRate(d domain.FxRate) models.FxRate {
	return models.FxRate{
		RateID:      d.RateID,
		BaseCode:    d.BaseCode,
		QuoteCode:   d.QuoteCode,
		Rate:        d.Rate,
		RateDate:    d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate
func ToDomainFxRate(m models.FxRate) domain.FxRate {
	return domain.FxRate{
		RateID:      m.RateID,
		BaseCode:    m.BaseCode,
		QuoteCode:   m.QuoteCode,
		Rate:        m.Rate,
		Date:        m.RateDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTenantSettings converts tenant settings.
func ToModelTenantSettings(d domain.TenantSettings) models.TenantSettings {
	return models.TenantSettings{
		TenantID:         d.TenantID,
		BaseCurrencyCode: d.BaseCurrencyCode,
		StrictFxRates:    d.StrictFxRates,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenantSettings converts a tenants row.
func ToDomainTenantSettings(m models.TenantSettings) domain.TenantSettings {
	return domain.TenantSettings{
		TenantID:         m.TenantID,
		BaseCurrencyCode: m.BaseCurrencyCode,
		StrictFxRates:    m.StrictFxRates,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
