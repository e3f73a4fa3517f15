// Package classify labels recognized page text as ordinary content, a
// table of contents, or the opening page of a chapter.
//
// # Heuristics
//
// A page is a table of contents when it carries a contents marker
// (目录, 目次, or the word CONTENTS) or lists at least five lines
// ending in a page-number token. A page is a chapter start when an
// ordinal heading (第 + numerals + a unit word such as 章 or 节)
// appears at the very start of a line within the first five lines.
// Everything else is content.
//
// Classification is pure: it depends only on the text passed in, never
// on neighboring pages, so pages may be classified in any order and
// reclassified at will.
package classify
