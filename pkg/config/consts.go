package config

// EnvPrefix is the envconfig prefix shared by every configuration section.
const EnvPrefix = "liquiverde"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)
