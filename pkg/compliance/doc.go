// Package compliance scores a scene against brand and platform guidelines.
//
// # Overview
//
// [Evaluate] is a pure function: given a [scene.Scene] and [Guidelines] it
// returns a [Report] with a score in [0, 100] and three lists of findings.
// It holds no state, so concurrent calls need no coordination and repeated
// calls with the same input return identical reports.
//
// # Rules
//
// The core rules always run, in this order:
//
//  1. Text coverage: the summed area of text elements as a percentage of the
//     canvas. Above MaxTextCoveragePercent is a hard violation.
//  2. Logo size: the first element with role "logo" (insertion order) must
//     cover at least MinLogoAreaPx2. A smaller logo is a soft warning; a
//     missing logo produces nothing.
//  3. Contrast: every text color against the background. A ratio below
//     MinContrastRatio is a recommendation.
//
// Optional rules are off until their guideline field is set: safe-zone
// margin, approved palette, required product image, required headline and
// maximum number of text blocks.
//
// # Scoring
//
//	score = clamp(100 - 15*len(Violations) - 5*len(Warnings), 0, 100)
//
// Recommendations never affect the score. A report is compliant when it has
// no violations.
//
// # Errors
//
// A structurally invalid scene is not scored: Evaluate returns the
// INVALID_SCENE error from [scene.Scene.Validate] and a zero Report. Bad
// guideline values return INVALID_GUIDELINES. Callers decide how to present
// "compliance unknown"; the engine never substitutes a default score.
package compliance
