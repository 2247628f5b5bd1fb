package audit

// Catalog is an ordered list of checks. Order is part of the report
// contract: findings are emitted domain by domain in catalog order.
type Catalog []Check

// DefaultCatalog returns the built-in checks in report order.
func DefaultCatalog() Catalog {
	return Catalog{
		GatewayExposure{},
		NetworkListeners{},
		MessagingPolicy{},
		CredentialPermissions{},
		Sandboxing{},
		LoggingRedaction{},
		SecretScanning{},
		HostServices{},
	}
}

// Names returns the domain names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, check := range c {
		names[i] = check.Name()
	}
	return names
}
