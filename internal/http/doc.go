// Package http serves the public site and the administrative dashboard.
//
// Public routes:
//   - /, /{slug}, /{slug}/{sub}: pages, galleries and services
//   - /vijesti, /vijesti/{slug}: the post listing and single posts
//   - /health: liveness probe
//
// Dashboard routes mount under /admin (HTML forms) and /admin/api (JSON):
//   - Directors: /admin/directors, /admin/directors/{id}
//   - Galleries: /admin/galleries, /admin/galleries/{id}
//   - Sections: /admin/pages/{id}/sections, /admin/api/pages/{id}/sections,
//     /admin/api/sections/{id}, /admin/api/sections/preview,
//     /admin/api/sections/schema/{type}
//   - Navigation cache: /admin/api/navigation/invalidate
package http
