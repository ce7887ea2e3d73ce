// Package rewrite substitutes canonical identifiers into a structured project
// file and reorders sibling entries keyed by known objects.
//
// Назначение: переписать текст, не трогая ничего, кроме идентификаторов и
// порядка соседних записей.
// Не делает: разбор plist, вычисление путей, IO.
// Зависимости: internal/lines (дерево строк), internal/resolve (две таблицы).
package rewrite
