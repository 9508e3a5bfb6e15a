// Package gopaginate provides page-number pagination primitives for GORM.
//
// Overview
//
// A Pager resolves the requested page number and size against configured
// defaults, counts the distinct entities matched by a query and fetches one
// page of them:
//   - queries without joins are paginated with LIMIT/OFFSET;
//   - queries with joins first select the primary keys of the page and then
//     fetch the entities by key, so that one-to-many joins neither duplicate
//     nor drop entities;
//   - pagers configured with a Dialect run a raw statement ranking rows with
//     ROW_NUMBER and cut the page by rank bounds.
//
// Key concepts
//   - Defaults, Params, Config: page request resolution.
//   - Page: the result, with total entry and page counts.
//   - Dialect, Filters: raw windowed statements for the known invoice schemas.
//   - RawExecutor: runs dialect statements through gorm or sqlx.
//
// See README for examples and usage details.
package gopaginate
