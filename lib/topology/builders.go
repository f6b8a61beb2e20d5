// Copyright 2025 BlockScience
// SPDX-License-Identifier: MIT

package topology

import "fmt"

// Skeleton defaults. Builders always emit loopback addressing; the
// synthesizer rewrites host and base_url for containerized deployments
// and fills in first_contact.
const (
	loopbackHost = "127.0.0.1"
	serverPath   = "/koi-net"
)

func skeletonServer(port int) ServerConfig {
	return ServerConfig{
		Host: loopbackHost,
		Port: port,
		Path: serverPath,
	}
}

func loopbackBaseURL(port int) string {
	return fmt.Sprintf("http://%s:%d%s", loopbackHost, port, serverPath)
}

type coordinatorBuilder struct{}

func (coordinatorBuilder) Document(port int) *Document {
	return &Document{
		Server: skeletonServer(port),
		KoiNet: KoiNetConfig{
			NodeName: "coordinator",
			NodeRID:  "orn:koi-net.node:coordinator+40610903-4272-4494-91fd-1e57501a0980",
			NodeProfile: NodeProfile{
				BaseURL:  loopbackBaseURL(port),
				NodeType: "FULL",
				Provides: Provides{
					Event: []string{"orn:koi-net.node", "orn:koi-net.edge"},
					State: []string{"orn:koi-net.node", "orn:koi-net.edge"},
				},
			},
			CacheDirectoryPath: ".koi",
			EventQueuesPath:    ".koi/coordinator/queues.json",
		},
	}
}

type githubSensorBuilder struct{}

func (githubSensorBuilder) Document(port int) *Document {
	return &Document{
		Server: skeletonServer(port),
		KoiNet: KoiNetConfig{
			NodeName: "github-sensor",
			NodeRID:  "orn:koi-net.node:github-sensor+04075a17-b636-48e0-9e2b-104da4710e34",
			NodeProfile: NodeProfile{
				BaseURL:  loopbackBaseURL(port),
				NodeType: "FULL",
				Provides: Provides{
					Event: []string{"orn:github.event"},
					State: []string{"orn:github.event"},
				},
			},
			CacheDirectoryPath: ".koi/github_sensor_cache",
			EventQueuesPath:    ".koi/queues.json",
		},
		Env: &EnvConfig{
			GitHubToken:         "GITHUB_TOKEN",
			GitHubWebhookSecret: "GITHUB_WEBHOOK_SECRET",
		},
		GitHub: &GitHubConfig{
			APIURL: "https://api.github.com/",
			MonitoredRepositories: []MonitoredRepository{
				{Name: "Blockscience/koi-net"},
			},
			BackfillMaxItems:      50,
			BackfillLookbackDays:  30,
			BackfillStateFilePath: ".koi/github/github_state.json",
		},
	}
}

type hackmdSensorBuilder struct{}

func (hackmdSensorBuilder) Document(port int) *Document {
	return &Document{
		Server: skeletonServer(port),
		KoiNet: KoiNetConfig{
			NodeName: "hackmd-sensor",
			NodeRID:  "orn:koi-net.node:hackmd-sensor+c1311da2-023f-4ce5-a262-6b9a6db85dea",
			NodeProfile: NodeProfile{
				BaseURL:  loopbackBaseURL(port),
				NodeType: "FULL",
				Provides: Provides{
					Event: []string{"orn:hackmd.note"},
					State: []string{"orn:hackmd.note"},
				},
			},
			CacheDirectoryPath: ".koi/cache",
			EventQueuesPath:    ".koi/hackmd/queues.json",
		},
		Env: &EnvConfig{
			HackMDAPIToken: "HACKMD_API_TOKEN",
		},
		HackMD: &HackMDConfig{
			TeamPath:      "blockscience",
			TargetNoteIDs: []string{"C1xso4C8SH-ZzDaloTq4Uw"},
		},
	}
}

type githubProcessorBuilder struct{}

func (githubProcessorBuilder) Document(port int) *Document {
	return &Document{
		Server: skeletonServer(port),
		KoiNet: KoiNetConfig{
			NodeName: "github-processor",
			NodeRID:  "orn:koi-net.node:github-processor+0bf78f28-9f56-4d31-8377-a33f49a0828e",
			NodeProfile: NodeProfile{
				BaseURL:  loopbackBaseURL(port),
				NodeType: "FULL",
				Provides: Provides{
					Event: []string{},
					State: []string{},
				},
			},
			CacheDirectoryPath: ".koi/github-processor/cache",
			EventQueuesPath:    ".koi/github-processor/queues.json",
		},
		Env: &EnvConfig{
			GitHubToken: "GITHUB_TOKEN",
		},
		IndexDBPath: ".koi/github-processor/index.db",
	}
}

type hackmdProcessorBuilder struct{}

func (hackmdProcessorBuilder) Document(port int) *Document {
	return &Document{
		Server: skeletonServer(port),
		KoiNet: KoiNetConfig{
			NodeName: "hackmd-processor",
			NodeRID:  "orn:koi-net.node:hackmd-processor+62eabec3-ed43-4122-94cc-ea7aa8701fde",
			NodeProfile: NodeProfile{
				BaseURL:  loopbackBaseURL(port),
				NodeType: "FULL",
				Provides: Provides{
					Event: []string{},
					State: []string{},
				},
			},
			CacheDirectoryPath: ".koi/hackmd-processor",
			EventQueuesPath:    ".koi/hackmd-processor/queues.json",
		},
		IndexDBPath:           ".koi/index_db/index.db",
		FetchRetryInitial:     30,
		FetchRetryMultiplier:  2,
		FetchRetryMaxAttempts: 3,
	}
}
