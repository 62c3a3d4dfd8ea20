// Code generated by hand. DO NOT EDIT.

package a

var generated *T = nil
