package domain

// Fragment is the block of target-language statements produced by
// expanding one tool call. Fragments are composed in call order.
type Fragment string

// Program is the complete generated script for one request: the composed
// fragment body embedded in the fixed host scaffold.
type Program string
