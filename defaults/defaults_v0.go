package defaults

import (
	"github.com/sahib/config"
)

// DefaultsV0 is the default config validation for desfile
var DefaultsV0 = config.DefaultMapping{
	"cipher": config.DefaultMapping{
		"format": config.DefaultEntry{
			Default:      "text",
			NeedsRestart: false,
			Validator:    config.EnumValidator("text", "binary"),
			Docs: `How encrypted blocks are written:

  * text: 64 characters of '0' and '1' per block.
  * binary: 8 raw bytes per block.
`,
		},
		"workers": config.DefaultEntry{
			Default:      0,
			NeedsRestart: false,
			Docs:         "How many go routines encrypt blocks in parallel. 0 means one per CPU.",
			Validator:    config.IntRangeValidator(0, 1024),
		},
		"chunk_blocks": config.DefaultEntry{
			Default:      4096,
			NeedsRestart: false,
			Docs:         "How many blocks are read into memory and processed at once.",
			Validator:    config.IntRangeValidator(1, 1<<20),
		},
	},
	"files": config.DefaultMapping{
		"encrypt_suffix": config.DefaultEntry{
			Default:      "_encoded",
			NeedsRestart: false,
			Docs:         "Inserted before the file extension of encrypted output files.",
		},
		"decrypt_suffix": config.DefaultEntry{
			Default:      "_decoded",
			NeedsRestart: false,
			Docs:         "Inserted before the file extension of decrypted output files.",
		},
		"key_path": config.DefaultEntry{
			Default:      "",
			NeedsRestart: false,
			Docs:         "Key file to use when no --key is given on the command line.",
		},
	},
	"log": config.DefaultMapping{
		"level": config.DefaultEntry{
			Default:      "info",
			NeedsRestart: false,
			Validator:    config.EnumValidator("debug", "info", "warning", "error"),
			Docs:         "Minimum severity of log messages that are shown.",
		},
		"colors": config.DefaultEntry{
			Default:      true,
			NeedsRestart: false,
			Docs:         "Use colors in log output when writing to a terminal.",
		},
	},
}
