package config

// Libfile represents the structure of the libload.yaml configuration file.
type Libfile struct {
	Repository string      `yaml:"repository"`
	CacheDir   string      `yaml:"cacheDir"`
	Owner      string      `yaml:"owner"`
	Activator  string      `yaml:"activator"`
	UserAgent  string      `yaml:"userAgent"`
	Timeouts   TimeoutsDTO `yaml:"timeouts"`
	Host       HostDTO     `yaml:"host"`
	Libraries  []string    `yaml:"libraries"`
}

// TimeoutsDTO holds Go duration strings such as "5s" or "2m30s".
type TimeoutsDTO struct {
	Connect  string `yaml:"connect"`
	Read     string `yaml:"read"`
	Transfer string `yaml:"transfer"`
}

// HostDTO describes the host process.
type HostDTO struct {
	Version     string `yaml:"version"`
	NativeSince string `yaml:"nativeSince"`
}
