package pipeline

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"librarian/internal/catalog"
)

// sidecarSuffix is appended to a target path to derive its metadata
// sibling document.
const sidecarSuffix = ".md"

// processJob runs the per-job pipeline. Each step is a hard gate: the
// first failure short-circuits into a failed result and no further steps
// run. Publishing is all-or-nothing across targets; any upload failure
// fails the whole job.
func (p *Pipeline) processJob(ctx context.Context, j job) jobResult {
	result := jobResult{remoteID: j.remoteID, fileName: j.fileName}

	content, err := p.remote.Fetch(ctx, j.remoteID)
	if err != nil {
		result.err = fmt.Errorf("download: %w", err)
		return result
	}

	if err := p.persistLocalCopy(j.remoteID, content); err != nil {
		result.err = fmt.Errorf("save local copy: %w", err)
		return result
	}

	text, err := p.extract(content)
	if err != nil {
		result.err = fmt.Errorf("extract text: %w", err)
		return result
	}

	extracted, matched, err := p.classifier.Classify(ctx, text, p.rules)
	if err != nil {
		result.err = fmt.Errorf("classify: %w", err)
		return result
	}
	result.meta = catalog.Metadata{
		Title:   extracted.Title,
		Authors: extracted.Authors,
		Summary: extracted.Summary,
	}

	targets := make([]string, 0, len(matched))
	for _, rule := range matched {
		target := path.Join(rule.Path, j.fileName)
		if err := p.remote.Put(ctx, target, content); err != nil {
			result.err = fmt.Errorf("upload %s: %w", target, err)
			return result
		}
		sidecar := renderSidecar(extracted)
		if err := p.remote.Put(ctx, target+sidecarSuffix, sidecar); err != nil {
			result.err = fmt.Errorf("upload %s: %w", target+sidecarSuffix, err)
			return result
		}
		targets = append(targets, target)
	}

	result.targets = targets
	return result
}

// persistLocalCopy writes the downloaded bytes into the raw working
// directory under a name derived from the sanitized remote id.
func (p *Pipeline) persistLocalCopy(remoteID string, content []byte) error {
	name := sanitizeID(remoteID) + ".pdf"
	return os.WriteFile(filepath.Join(p.cfg.RawDir(), name), content, 0o644)
}

func sanitizeID(id string) string {
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_", " ", "_")
	return replacer.Replace(id)
}
