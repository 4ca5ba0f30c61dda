// Package execshell runs external commands on behalf of termstatus and
// notifies observers about command lifecycle events so they can be rendered
// as status lines.
package execshell
