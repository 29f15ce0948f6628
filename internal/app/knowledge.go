package app

import (
	"io/fs"
	"os"

	"github.com/milestonetrucks/voice-agent/internal/knowledge"
	"github.com/rs/zerolog/log"
)

// LoadKnowledge reads the material and project tables from dir, or the embedded
// tables when dir is empty.
func LoadKnowledge(dir string) (*knowledge.KnowledgeBase, *knowledge.Recommender, error) {
	var fsys fs.FS = knowledge.DefaultFS()
	if dir != "" {
		fsys = os.DirFS(dir)
		log.Info().Str("dir", dir).Msg("Loading knowledge tables from directory")
	}
	return knowledge.Load(fsys)
}
