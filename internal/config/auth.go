package config

// AuthConfig selects where the service credential comes from. When Token
// is set it wins; otherwise DBPath points at the persisted token store.
type AuthConfig struct {
	Token     string `yaml:"token"`
	DBPath    string `yaml:"db_path"`
	Namespace string `yaml:"namespace"`
}

func defaultAuth() AuthConfig {
	return AuthConfig{Namespace: defaultAuthNamespace}
}

func applyAuthEnv(cfg *AuthConfig) {
	overrideString(&cfg.Token, envAuthToken)
	overrideString(&cfg.DBPath, envAuthDBPath)
	overrideString(&cfg.Namespace, envAuthNamespace)
}
