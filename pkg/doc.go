// Package pkg provides the core libraries for CreativeForge.
//
// # Overview
//
// CreativeForge scores ad creatives against brand guidelines and reshapes
// them for the aspect ratios of social media placements. The pkg directory
// is organized into these areas:
//
//  1. [scene] - The positioned element model that every other package reads
//  2. [compliance] - Rule evaluation producing a score and findings
//  3. [format] - Export formats and the format-adaptive layout transform
//  4. [color], [geometry] - Contrast and rectangle math used by the rules
//  5. [pipeline] - Orchestration (ingest → evaluate → adapt), with caching
//  6. [cache], [config], [io], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through CreativeForge:
//
//	Scene JSON/YAML
//	      ↓
//	 [io] package (decode + validate)
//	      ↓
//	 [compliance] package (score against guidelines)
//	      ↓
//	 [format] package (one adapted scene per export format)
//	      ↓
//	 Variants with their own compliance reports
//
// # Quick Start
//
// Score a scene and adapt it to a story placement:
//
//	import (
//	    "github.com/matzehuels/creativeforge/pkg/compliance"
//	    "github.com/matzehuels/creativeforge/pkg/format"
//	    "github.com/matzehuels/creativeforge/pkg/scene"
//	)
//
//	s := scene.New(1080, 1080).With(
//	    scene.NewImage("logo", "asset-1", scene.RoleLogo, 40, 40, 200, 120),
//	    scene.NewText("cta", "Shop now", "#ffffff", 100, 800, 400, 80),
//	)
//
//	report, err := compliance.Evaluate(s, compliance.DefaultGuidelines())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Score, report.IsCompliant)
//
//	story, err := format.Adapt(s, format.InstagramStory)
//
// [scene]: github.com/matzehuels/creativeforge/pkg/scene
// [compliance]: github.com/matzehuels/creativeforge/pkg/compliance
// [format]: github.com/matzehuels/creativeforge/pkg/format
// [color]: github.com/matzehuels/creativeforge/pkg/color
// [geometry]: github.com/matzehuels/creativeforge/pkg/geometry
// [pipeline]: github.com/matzehuels/creativeforge/pkg/pipeline
// [cache]: github.com/matzehuels/creativeforge/pkg/cache
// [config]: github.com/matzehuels/creativeforge/pkg/config
// [io]: github.com/matzehuels/creativeforge/pkg/io
// [errors]: github.com/matzehuels/creativeforge/pkg/errors
// [observability]: github.com/matzehuels/creativeforge/pkg/observability
package pkg
