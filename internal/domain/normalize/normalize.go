// Package normalize converts the skill documents into canonical records.
//
// Three document shapes exist in the wild. Detect sniffs which one a
// document is; each shape has its own pure converter producing Drafts, and
// Normalize assigns group ids and appends the result to the catalog.
package normalize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/tidwall/gjson"
)

// Shape identifies a document layout.
type Shape string

// Known shapes, in detection priority order.
const (
	ShapeUnknown Shape = "unknown"
	ShapeBlocks  Shape = "blocks"
	ShapeGroups  Shape = "groups"
	ShapeFlat    Shape = "flat"
)

// Draft is one conceptual skill: its base and/or gold records, not yet
// assigned a group id or catalog index.
type Draft struct {
	Members []model.Skill
}

// Appender is the part of the catalog the normalizer writes to.
type Appender interface {
	NextGroupID() int64
	Append(ctx context.Context, skills ...model.Skill) []int
}

// Result summarizes one normalized document.
type Result struct {
	Type   model.SkillType `json:"type"`
	Shape  Shape           `json:"shape"`
	Groups int             `json:"groups"`
	Skills int             `json:"skills"`
}

// Detect reports the shape of doc.
//
// ErrInvalidDocument means doc is not JSON at all. ErrEmptyDocument,
// ErrMissingArray and ErrUnknownShape are warnings: the document parsed but
// contributes nothing.
func Detect(doc []byte) (Shape, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		return ShapeUnknown, ErrEmptyDocument
	}
	if !gjson.ValidBytes(trimmed) {
		return ShapeUnknown, ErrInvalidDocument
	}
	root := gjson.ParseBytes(trimmed)
	switch {
	case root.Type == gjson.Null:
		return ShapeUnknown, ErrEmptyDocument
	case root.IsObject():
		blocks, groups := root.Get("blocks"), root.Get("groups")
		switch {
		case blocks.IsArray():
			return ShapeBlocks, nil
		case groups.IsArray():
			return ShapeGroups, nil
		case blocks.Exists():
			return ShapeUnknown, fmt.Errorf("%w: \"blocks\"", ErrMissingArray)
		case groups.Exists():
			return ShapeUnknown, fmt.Errorf("%w: \"groups\"", ErrMissingArray)
		}
	case root.IsArray():
		return ShapeFlat, nil
	}
	return ShapeUnknown, ErrUnknownShape
}

// Convert detects the shape of doc and runs the matching converter.
func Convert(typ model.SkillType, doc []byte) (Shape, []Draft, error) {
	shape, err := Detect(doc)
	if err != nil {
		return shape, nil, err
	}
	root := gjson.ParseBytes(doc)
	switch shape {
	case ShapeBlocks:
		return shape, FromBlocks(typ, root.Get("blocks")), nil
	case ShapeGroups:
		return shape, FromGroups(typ, root.Get("groups")), nil
	default:
		return shape, FromFlat(typ, root), nil
	}
}

// Normalize converts doc and appends its records to cat.
func Normalize(ctx context.Context, cat Appender, typ model.SkillType, doc []byte) (Result, error) {
	shape, drafts, err := Convert(typ, doc)
	if err != nil {
		return Result{Type: typ, Shape: shape}, err
	}
	return Commit(ctx, cat, typ, shape, drafts), nil
}

// Commit appends converted drafts to cat. Every Draft with at least one
// member gets a fresh group id, so variants of one conceptual skill share it
// and no two drafts do. The whole document lands in a single append.
func Commit(ctx context.Context, cat Appender, typ model.SkillType, shape Shape, drafts []Draft) Result {
	res := Result{Type: typ, Shape: shape}
	var batch []model.Skill
	for _, d := range drafts {
		if len(d.Members) == 0 {
			continue
		}
		id := cat.NextGroupID()
		for _, m := range d.Members {
			m.GroupID = id
			batch = append(batch, m)
		}
		res.Groups++
	}
	cat.Append(ctx, batch...)
	res.Skills = len(batch)
	return res
}
