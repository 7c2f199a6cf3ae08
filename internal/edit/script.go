package edit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is an ordered list of edits.
type Script struct {
	Ops []Op
}

var decoders = map[string]func() Op{
	"split_wall":        func() Op { return &SplitWall{} },
	"move_wall":         func() Op { return &MoveWall{} },
	"push_wall":         func() Op { return &PushWall{} },
	"delete_wall":       func() Op { return &DeleteWall{} },
	"merge_points":      func() Op { return &MergePoints{} },
	"create_sector":     func() Op { return &CreateSector{} },
	"split_sector":      func() Op { return &SplitSector{} },
	"join_sectors":      func() Op { return &JoinSectors{} },
	"delete_sector":     func() Op { return &DeleteSector{} },
	"create_inner_loop": func() Op { return &CreateInnerLoop{} },
	"fill_inner_loop":   func() Op { return &FillInnerLoop{} },
	"delete_loop":       func() Op { return &DeleteLoop{} },
	"set_first_wall":    func() Op { return &SetFirstWall{} },
	"insert_sprite":     func() Op { return &InsertSprite{} },
	"move_sprite":       func() Op { return &MoveSprite{} },
	"delete_sprite":     func() Op { return &DeleteSprite{} },
	"portal_hull":       func() Op { return &PortalHull{} },
}

// UnmarshalYAML reads
//
//	ops:
//	  - op: split_wall
//	    wall: 0
//	    x: 512
//	    y: 0
func (s *Script) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Ops []yaml.Node `yaml:"ops"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Ops = make([]Op, 0, len(raw.Ops))
	for i := range raw.Ops {
		node := &raw.Ops[i]
		var head struct {
			Op string `yaml:"op"`
		}
		if err := node.Decode(&head); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		mk, ok := decoders[head.Op]
		if !ok {
			return fmt.Errorf("op %d (line %d): unknown op %q", i, node.Line, head.Op)
		}
		op := mk()
		if err := node.Decode(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, head.Op, err)
		}
		s.Ops = append(s.Ops, deref(op))
	}
	return nil
}

// deref stores ops by value so type switches see the plain variants.
func deref(op Op) Op {
	switch o := op.(type) {
	case *SplitWall:
		return *o
	case *MoveWall:
		return *o
	case *PushWall:
		return *o
	case *DeleteWall:
		return *o
	case *MergePoints:
		return *o
	case *CreateSector:
		return *o
	case *SplitSector:
		return *o
	case *JoinSectors:
		return *o
	case *DeleteSector:
		return *o
	case *CreateInnerLoop:
		return *o
	case *FillInnerLoop:
		return *o
	case *DeleteLoop:
		return *o
	case *SetFirstWall:
		return *o
	case *InsertSprite:
		return *o
	case *MoveSprite:
		return *o
	case *DeleteSprite:
		return *o
	case *PortalHull:
		return *o
	}
	return op
}

// ParseScript decodes a YAML edit script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}
	return s, nil
}

// LoadScript reads and decodes the script at path.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
