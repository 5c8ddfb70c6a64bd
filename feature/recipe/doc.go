// Package recipe tracks crafting recipes and which characters know
// them, answering "who can craft this" for the guild.
package recipe
