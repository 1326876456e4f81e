// Package anilist is a client for the AniList GraphQL API.
package anilist

import "fmt"

// mediaSubquery is the selection set shared by every media query.
var mediaSubquery = `
id
idMal
type
title {
	romaji
	english
	native
}
coverImage {
	large
	medium
}
averageScore
episodes
chapters
volumes
status
genres
description(asHtml: false)
startDate {
	year
}
trailer {
	id
	site
}
studios(isMain: true) {
	nodes {
		name
	}
}
staff(perPage: 5) {
	nodes {
		name {
			full
		}
	}
}
siteUrl
`

// pageQuery lists media of one type, optionally filtered by a search term.
var pageQuery = fmt.Sprintf(`
query ($page: Int, $perPage: Int, $type: MediaType, $sort: [MediaSort], $search: String) {
	Page (page: $page, perPage: $perPage) {
		pageInfo {
			hasNextPage
		}
		media (type: $type, sort: $sort, search: $search, isAdult: false) {
			%s
		}
	}
}
`, mediaSubquery)

// detailsQuery retrieves a single media by id.
var detailsQuery = fmt.Sprintf(`
query ($id: Int, $type: MediaType) {
	Media (id: $id, type: $type) {
		%s
	}
}
`, mediaSubquery)
