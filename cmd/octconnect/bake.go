package octconnect

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/extras"
	"github.com/octave-engine/octconnect/internal/match"
	"github.com/octave-engine/octconnect/internal/panel"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/octave-engine/octconnect/internal/session"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagBakeFile   string
	flagBakeOutput string
	flagBakeSets   []string
	flagBakeMatch  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "bake",
		Short: "Compute the glTF extras for annotated scene objects",
		Long: "bake reads object annotations from a YAML scene file, rebuilds each " +
			"object's script properties from the current script source and prints " +
			"the extras payload per object.",
		Example: `
# scene.yaml
objects:
  - name: Goblin.001
    mesh_type: STATIC_MESH
    asset: Assets/Characters/SM_Goblin
    script: Scripts/Goblin.lua
    props:
      speed: 4.5
  - name: Camera
    camera: true
    main_camera: true

octconnect bake -f scene.yaml --set Goblin.001.speed=6 -o extras.json
`,
		RunE: runBake,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagBakeFile, "file", "f", "", "scene annotation file (YAML)")
	cmd.Flags().StringVarP(&flagBakeOutput, "output", "o", "", "write extras JSON to this file instead of stdout")
	cmd.Flags().StringArrayVar(&flagBakeSets, "set", nil, "override a property: object.property=value (repeatable)")
	cmd.Flags().BoolVar(&flagBakeMatch, "match", false, "fill missing asset references by matching object names against the catalog")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.RegisterFlagCompletionFunc("file", completeExt("yaml", "yml"))
}

// sceneObject is one entry of a scene file. Props are initial property
// values; Extras are the object's existing extras, merged into.
type sceneObject struct {
	extras.Object `yaml:",inline"`
	Props         map[string]any `yaml:"props,omitempty"`
	Extras        map[string]any `yaml:"extras,omitempty"`
}

type sceneFile struct {
	Objects []sceneObject `yaml:"objects"`
}

type bakedObject struct {
	Name   string         `json:"name"`
	Extras map[string]any `json:"extras"`
}

// propertySet is one parsed --set override.
type propertySet struct {
	object, property, value string
}

func loadScene(path string) (sceneFile, error) {
	var sc sceneFile
	b, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return sc, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

// parseSet splits "object.property=value". Object names may themselves
// contain dots, property names may not.
func parseSet(s string) (propertySet, error) {
	lhs, value, ok := strings.Cut(s, "=")
	if !ok {
		return propertySet{}, fmt.Errorf("invalid --set %q: want object.property=value", s)
	}
	i := strings.LastIndex(lhs, ".")
	if i <= 0 || i == len(lhs)-1 {
		return propertySet{}, fmt.Errorf("invalid --set %q: want object.property=value", s)
	}
	return propertySet{object: lhs[:i], property: lhs[i+1:], value: value}, nil
}

func runBake(cmd *cobra.Command, _ []string) error {
	sc, err := loadScene(flagBakeFile)
	if err != nil {
		return err
	}
	sets := make([]propertySet, 0, len(flagBakeSets))
	for _, s := range flagBakeSets {
		ps, err := parseSet(s)
		if err != nil {
			return err
		}
		sets = append(sets, ps)
	}

	s, db := proj.openSession(proj.exclude(""))
	cat, err := s.Rescan(nil)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	baked, err := bakeScene(sc, sets, s, cat, flagBakeMatch)
	if err != nil {
		return err
	}
	if db != nil {
		if err := cache.Save(proj.root, db); err != nil {
			log.Warn().Err(err).Msg("could not save property cache")
		}
	}

	bc := proj.local.GetBakeConfig()
	output := flagBakeOutput
	if output == "" {
		output = bc.GetOutput()
	}
	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := report.WriteJSON(w, baked, bc.IndentEnabled()); err != nil {
		return err
	}
	if output != "" {
		_, _ = fmt.Fprintln(os.Stderr, "Wrote", output)
	}
	return nil
}

// bakeScene rebuilds every object's panel and returns its merged extras,
// in scene order.
func bakeScene(sc sceneFile, sets []propertySet, s *session.Session, cat catalog.Catalog, autoMatch bool) ([]bakedObject, error) {
	byObject := map[string][]propertySet{}
	for _, ps := range sets {
		byObject[ps.object] = append(byObject[ps.object], ps)
	}

	out := make([]bakedObject, 0, len(sc.Objects))
	for _, so := range sc.Objects {
		obj := so.Object
		if autoMatch && !obj.Camera && obj.Asset == "" {
			obj.Asset = match.Best(obj.Name, cat.Assets)
		}
		if obj.Script != "" && !cat.HasScript(obj.Script) {
			log.Warn().Str("object", obj.Name).Str("script", obj.Script).Msg("script not in catalog")
		}

		p, err := objectPanel(obj, so.Props, byObject[obj.Name], s)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.Name, err)
		}
		delete(byObject, obj.Name)
		obj.Props = p

		ex, err := extras.Apply(so.Extras, obj, cat.Assets)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", obj.Name, err)
		}
		out = append(out, bakedObject{Name: obj.Name, Extras: ex})
	}

	if len(byObject) > 0 {
		names := make([]string, 0, len(byObject))
		for n := range byObject {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("--set names unknown object(s): %s", strings.Join(names, ", "))
	}
	return out, nil
}

// objectPanel seeds a panel with the scene's stored values, rebuilds it
// against the script's current declarations and applies overrides.
func objectPanel(obj extras.Object, stored map[string]any, sets []propertySet, s *session.Session) (*panel.Panel, error) {
	p := &panel.Panel{}
	if obj.Script == "" {
		if len(sets) > 0 {
			return nil, fmt.Errorf("%w: %s (object has no script)", panel.ErrUnknownProperty, sets[0].property)
		}
		return p, nil
	}
	defs := s.Properties(obj.Script)

	// Stored values only survive when they still fit the declared type.
	seed := make([]types.ScriptPropertyDef, 0, len(defs))
	for _, d := range defs {
		v, ok := stored[d.Name]
		if !ok {
			continue
		}
		val, err := panel.Coerce(d.Type, v)
		if err != nil {
			log.Warn().Err(err).Str("object", obj.Name).Str("property", d.Name).Msg("stored value dropped")
			continue
		}
		seed = append(seed, types.ScriptPropertyDef{Name: d.Name, Type: d.Type, Default: val})
	}
	p.Rebuild(seed)
	p.Rebuild(defs)

	for _, ps := range sets {
		if err := p.Set(ps.property, ps.value); err != nil {
			return nil, err
		}
	}
	return p, nil
}
