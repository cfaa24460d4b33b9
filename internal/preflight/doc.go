// Package preflight provides readiness checks for the tools and folders
// moviekit depends on.
//
// These checks run in two contexts:
//   - Every command that touches the library calls RunAll after loading the
//     configuration. Any failure is fatal: the per-key report is printed and
//     logged and the process exits 1.
//   - `moviekit config validate` also runs CheckTranslation, which pings the
//     translation endpoint once when translation is enabled.
package preflight
