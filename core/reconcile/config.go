package reconcile

// Config holds the import settings.
type Config struct {
	ChunkSize      int    `mapstructure:"chunk_size" default:"3"`
	MatchMode      string `mapstructure:"match_mode" default:"exact"`
	DefaultSource  string `mapstructure:"default_source" default:"data/sample_csv.csv"`
	ArchiveUploads bool   `mapstructure:"archive_uploads" default:"false"`
	UploadPrefix   string `mapstructure:"upload_prefix" default:"uploads"`
}
