package constants

const (
	AppName           = "pausa"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/pausa/pausa.db"
	DefaultSettings   = "~/.config/pausa/config.toml"

	// StorageKey is the single key the check-in collection is stored under
	StorageKey = "pausa_interna_checkins_v1"

	// TimestampFormat is the wire format for record timestamps (UTC, millisecond precision)
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	// DateTimeFormat is the human-facing date/time format (pt-BR style)
	DateTimeFormat = "02/01/2006 • 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pausa-"
	BackupFileSuffix = ".db"

	// Micro-pause defaults
	DefaultBreatheSeconds = 60
	DefaultBreatheLabel   = "Inspire… solte… só acompanha."
	DefaultSilentSeconds  = 120
	DefaultSilentLabel    = "Só fique aqui. Sem tarefa."

	// SnippetLength is the maximum preview length for notes in history listings
	SnippetLength = 80
)
