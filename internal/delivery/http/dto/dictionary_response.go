package dto

import "skill-vault/internal/repository"

type NameResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TagResponse struct {
	ID  int64  `json:"id"`
	Tag string `json:"tag"`
}

func FromNameEntries(items []repository.DictionaryEntry) []NameResponse {
	out := make([]NameResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NameResponse{ID: e.ID, Name: e.Value})
	}
	return out
}

func FromTagEntries(items []repository.DictionaryEntry) []TagResponse {
	out := make([]TagResponse, 0, len(items))
	for _, e := range items {
		out = append(out, TagResponse{ID: e.ID, Tag: e.Value})
	}
	return out
}

type NameListResponse struct {
	Data       []NameResponse     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type TagListResponse struct {
	Data       []TagResponse      `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type PruneResponse struct {
	RemovedNames []NameResponse `json:"removedNames"`
	RemovedTags  []TagResponse  `json:"removedTags"`
}
