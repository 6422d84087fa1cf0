// Package evaluator computes calculator display expressions.
//
// The accepted dialect is the one the keypad produces: space padded + - × ÷
// (ASCII * and / are accepted as aliases), decimal operands, a postfix % and a
// leading minus sign on an operand. Integer results are exact at any size;
// other results are rounded to a fixed number of decimal places.
package evaluator
