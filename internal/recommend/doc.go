// Package recommend selects and orders catalog dishes for a user.
//
// A request runs through four stages: the pre-filter bounds the catalog to a
// candidate set and drops every dish that is unsafe for the user, the scorer adds
// up the nutritional, filter, preference, malnutrition and diversity factors, the
// ranker sorts with a stable sort and assigns ranks, and the cache memoizes the
// ranked list per user and filter set.
//
// Allergen exclusion is absolute. A dish carrying a declared allergen, either as a
// structured allergen, a catalog tag or a keyword in its name or description, never
// reaches the scorer and scores AllergyViolationScore if it does.
//
// When the user context provider fails or has nothing for the user, the engine
// falls back to the catalog prefix ranked by base nutritional score plus a flat
// bonus, and does not cache that result.
package recommend
