package config

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.trai.ch/zerr"
)

// hclManifest mirrors Manifest for gohcl decoding. Blocks keep their file
// order, which is what makes declaration order work for HCL manifests too.
type hclManifest struct {
	Version   string `hcl:"version,optional"`
	Generated string `hcl:"generated,optional"`
	Generator string `hcl:"generator,optional"`

	Filegroups []hclFilegroup `hcl:"filegroup,block"`
	Libraries  []hclLibrary   `hcl:"library,block"`
	Groups     []hclGroup     `hcl:"group,block"`
	Omits      []hclOmit      `hcl:"omit,block"`
}

type hclFilegroup struct {
	Name  string   `hcl:"name,label"`
	Files []string `hcl:"files"`
}

type hclLibrary struct {
	Name     string   `hcl:"name,label"`
	Package  string   `hcl:"package,optional"`
	Files    []string `hcl:"files"`
	Includes []string `hcl:"includes,optional"`
	Deps     []string `hcl:"deps,optional"`
}

type hclGroup struct {
	Name        string      `hcl:"name,label"`
	Package     string      `hcl:"package,optional"`
	Generator   string      `hcl:"generator,optional"`
	File        string      `hcl:"file"`
	Extra       []string    `hcl:"extra,optional"`
	Includes    []string    `hcl:"includes,optional"`
	Deps        []string    `hcl:"deps,optional"`
	Targets     []hclTarget `hcl:"target,block"`
	DocOnly     []string    `hcl:"doc_only,optional"`
	StripPrefix string      `hcl:"strip_prefix,optional"`
	TestScript  bool        `hcl:"test_script,optional"`
}

type hclTarget struct {
	Opts string `hcl:"opts"`
	Out  string `hcl:"out"`
}

type hclOmit struct {
	OS    string   `hcl:"os,label"`
	Flags []string `hcl:"flags"`
}

// parseHCL reads an HCL manifest and converts it to the shared Manifest
// structure.
func parseHCL(manifestPath string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(manifestPath)
	if diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, "failed to parse manifest"), "path", manifestPath)
	}

	var raw hclManifest
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, zerr.With(zerr.Wrap(diags, "failed to decode manifest"), "path", manifestPath)
	}

	manifest := &Manifest{
		Version:   raw.Version,
		Generated: raw.Generated,
		Generator: raw.Generator,
	}

	for _, fg := range raw.Filegroups {
		manifest.Filegroups = append(manifest.Filegroups, FilegroupDTO(fg))
	}
	for _, lib := range raw.Libraries {
		manifest.Libraries = append(manifest.Libraries, LibraryDTO(lib))
	}
	for _, g := range raw.Groups {
		dto := GroupDTO{
			Name:        g.Name,
			Package:     g.Package,
			Generator:   g.Generator,
			File:        g.File,
			Extra:       g.Extra,
			Includes:    g.Includes,
			Deps:        g.Deps,
			DocOnly:     g.DocOnly,
			StripPrefix: g.StripPrefix,
			TestScript:  g.TestScript,
		}
		for _, t := range g.Targets {
			dto.Targets = append(dto.Targets, TargetDTO(t))
		}
		manifest.Groups = append(manifest.Groups, dto)
	}
	if len(raw.Omits) > 0 {
		manifest.Omit = make(map[string][]string, len(raw.Omits))
		for _, o := range raw.Omits {
			manifest.Omit[o.OS] = o.Flags
		}
	}

	return manifest, nil
}
