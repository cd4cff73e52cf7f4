// Package objectid は全ストア共通の識別子（24桁16進のObjectID）を扱います。
package objectid

import "go.mongodb.org/mongo-driver/bson/primitive"

// New は新しい識別子を生成します。
func New() string {
	return primitive.NewObjectID().Hex()
}

// Valid はidが24桁16進の識別子として正しい形式かを判定します。
func Valid(id string) bool {
	return primitive.IsValidObjectID(id)
}
