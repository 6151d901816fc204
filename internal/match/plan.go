package match

import (
	"struct-mapper/internal/analyze"
	"struct-mapper/internal/common"
	"struct-mapper/options"
)

// Action is the predicted treatment of one source field.
type Action string

const (
	ActionExcluded     Action = "excluded"
	ActionNoTarget     Action = "no_target"
	ActionReadOnly     Action = "read_only"
	ActionUnreachable  Action = "unreachable"
	ActionCopy         Action = "copy"
	ActionAssign       Action = "assign"
	ActionConvert      Action = "convert"
	ActionDynamic      Action = "dynamic"
	ActionIncompatible Action = "incompatible"
)

// Copies returns true if the field is expected to be written into the target.
func (a Action) Copies() bool {
	return a == ActionCopy || a == ActionAssign || a == ActionConvert
}

// FieldPlan is the prediction for one readable source field.
type FieldPlan struct {
	Field      string `yaml:"field"`
	Target     string `yaml:"target,omitempty"`
	SourceType string `yaml:"source_type"`
	TargetType string `yaml:"target_type,omitempty"`
	Action     Action `yaml:"action"`
	Category   string `yaml:"category,omitempty"`
}

// Plan predicts a transfer between two struct types.
type Plan struct {
	Source      string      `yaml:"source"`
	Target      string      `yaml:"target"`
	Conversions string      `yaml:"conversions"`
	Fields      []FieldPlan `yaml:"fields"`
}

// Count returns the number of fields planned with the given action.
func (p *Plan) Count(action Action) int {
	n := 0

	for _, f := range p.Fields {
		if f.Action == action {
			n++
		}
	}

	return n
}

// Copied returns the number of fields expected to be written into the target.
func (p *Plan) Copied() int {
	n := 0

	for _, f := range p.Fields {
		if f.Action.Copies() {
			n++
		}
	}

	return n
}

// BuildPlan predicts, field by field, what a transfer from source to target does with
// the allowed conversion categories and exclusion names.
func BuildPlan(source, target *analyze.StructInfo, allowed options.CategoryEnum, exclude ...string) *Plan {
	excluded := common.FoldSet(exclude)

	plan := &Plan{
		Source:      source.ID.Short(),
		Target:      target.ID.Short(),
		Conversions: allowed.String(),
	}

	for _, sf := range source.Fields {
		if !sf.Readable {
			continue
		}

		fp := FieldPlan{
			Field:      sf.Name,
			SourceType: analyze.TypeString(sf.Type),
		}

		if _, ok := excluded[common.FoldName(sf.Name)]; ok {
			fp.Action = ActionExcluded
			plan.Fields = append(plan.Fields, fp)
			continue
		}

		df, ok := target.Lookup(sf.Name)
		if !ok {
			fp.Action = ActionNoTarget
			plan.Fields = append(plan.Fields, fp)
			continue
		}

		fp.Target = df.Name
		fp.TargetType = analyze.TypeString(df.Type)

		if !df.Writable {
			fp.Action = ActionReadOnly
			plan.Fields = append(plan.Fields, fp)
			continue
		}

		res := ScoreTypeCompatibility(sf.Type, df.Type, allowed)

		switch res.Compatibility {
		case TypeIncompatible:
			fp.Action = ActionIncompatible
		case TypeDynamic:
			fp.Action = ActionDynamic
		case TypeIdentical:
			fp.Action = ActionCopy
		case TypeAssignable:
			fp.Action = ActionAssign
		case TypeConvertible:
			fp.Action = ActionConvert
			fp.Category = res.Category.String()
		}

		if df.Unreachable && fp.Action != ActionIncompatible {
			fp.Action = ActionUnreachable
			fp.Category = ""
		}

		plan.Fields = append(plan.Fields, fp)
	}

	return plan
}
