package models

type contextKey string

// ContextUser keys the authenticated User on the request context.
const ContextUser contextKey = "user"
