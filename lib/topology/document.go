// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package topology

// Document is the per-node configuration document written to each node
// repository as config.yaml. The koi_net section is common to every
// node; the remaining sections are node-specific extensions and are
// omitted when empty. Field order here determines serialization order,
// so regeneration with unchanged inputs is byte-identical.
type Document struct {
	Server ServerConfig `yaml:"server"`
	KoiNet KoiNetConfig `yaml:"koi_net"`

	// Env maps logical secret names to the environment variable keys
	// the node reads them from. Only sensor and processor nodes that
	// need credentials carry this section.
	Env *EnvConfig `yaml:"env,omitempty"`

	// GitHub configures the GitHub sensor's API access and backfill.
	GitHub *GitHubConfig `yaml:"github,omitempty"`

	// HackMD configures the HackMD sensor's team and note targets.
	HackMD *HackMDConfig `yaml:"hackmd,omitempty"`

	// IndexDBPath is where processor nodes keep their index store.
	IndexDBPath string `yaml:"index_db_path,omitempty"`

	// Fetch retry parameters for the HackMD processor's pull loop.
	FetchRetryInitial     int `yaml:"fetch_retry_initial,omitempty"`
	FetchRetryMultiplier  int `yaml:"fetch_retry_multiplier,omitempty"`
	FetchRetryMaxAttempts int `yaml:"fetch_retry_max_attempts,omitempty"`
}

// ServerConfig is the node's HTTP server binding.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// KoiNetConfig is the node's koi-net identity and network settings.
type KoiNetConfig struct {
	NodeName           string      `yaml:"node_name"`
	NodeRID            string      `yaml:"node_rid"`
	NodeProfile        NodeProfile `yaml:"node_profile"`
	CacheDirectoryPath string      `yaml:"cache_directory_path"`
	EventQueuesPath    string      `yaml:"event_queues_path"`

	// FirstContact is the coordinator's base URL, or empty for the
	// coordinator itself. Always serialized, even when empty, so that
	// nodes can distinguish "I am the coordinator" from a missing key.
	FirstContact string `yaml:"first_contact"`
}

// NodeProfile is the capability advertisement published to peers.
type NodeProfile struct {
	BaseURL  string   `yaml:"base_url"`
	NodeType string   `yaml:"node_type"`
	Provides Provides `yaml:"provides"`
}

// Provides lists the RID categories a node serves. Both slices are
// always serialized; processors advertise empty lists, not missing keys.
type Provides struct {
	Event []string `yaml:"event"`
	State []string `yaml:"state"`
}

// EnvConfig maps logical secret names to environment variable keys.
// Values are key names, not secret values; the actual values live in
// each node's .env file and the shared secret store.
type EnvConfig struct {
	GitHubToken         string `yaml:"github_token,omitempty"`
	GitHubWebhookSecret string `yaml:"github_webhook_secret,omitempty"`
	HackMDAPIToken      string `yaml:"hackmd_api_token,omitempty"`
}

// GitHubConfig configures the GitHub sensor node.
type GitHubConfig struct {
	APIURL                string                `yaml:"api_url"`
	MonitoredRepositories []MonitoredRepository `yaml:"monitored_repositories"`
	BackfillMaxItems      int                   `yaml:"backfill_max_items"`
	BackfillLookbackDays  int                   `yaml:"backfill_lookback_days"`
	BackfillStateFilePath string                `yaml:"backfill_state_file_path"`
}

// MonitoredRepository names a repository the GitHub sensor watches.
type MonitoredRepository struct {
	Name string `yaml:"name"`
}

// HackMDConfig configures the HackMD sensor node.
type HackMDConfig struct {
	TeamPath      string   `yaml:"team_path"`
	TargetNoteIDs []string `yaml:"target_note_ids"`
}
