package responder_config

const DefaultCopyBufferSize = 32 << 10

var DefaultIndexFiles = []string{"index.html", "index.htm"}

type Config struct {
	DirectoryListing bool
	IndexFiles       []string
	CopyBufferSize   int
}

type Option func(*Config)

func New(options ...Option) *Config {
	config := &Config{
		DirectoryListing: true,
		IndexFiles:       DefaultIndexFiles,
		CopyBufferSize:   DefaultCopyBufferSize,
	}

	for _, option := range options {
		if option != nil {
			option(config)
		}
	}

	return config
}

func WithDirectoryListing(directoryListing bool) Option {
	return func(config *Config) {
		config.DirectoryListing = directoryListing
	}
}

func WithIndexFiles(indexFiles ...string) Option {
	return func(config *Config) {
		config.IndexFiles = indexFiles
	}
}

func WithCopyBufferSize(copyBufferSize int) Option {
	return func(config *Config) {
		if copyBufferSize > 0 {
			config.CopyBufferSize = copyBufferSize
		}
	}
}
