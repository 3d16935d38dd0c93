package config

// YAMLConfig mirrors config.yaml. Pointer fields distinguish "unset" from
// zero values so defaults survive partial files.
type YAMLConfig struct {
	NIP05 struct {
		RequireName     *bool  `yaml:"require_name"`
		Timeout         string `yaml:"timeout"`
		FollowRedirects *bool  `yaml:"follow_redirects"`
		Format          string `yaml:"format"`
	} `yaml:"nip05"`
}
